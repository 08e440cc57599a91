package services

// Instruction templates. Each takes the output format as its only verb.

const lessonTemplate = `You are an experienced educator who writes clear, engaging lessons.

Write a lesson that builds real understanding of the topic, with plain explanations, worked examples and key takeaways.

Structure the lesson as:
1. An introduction that says what the lesson covers
2. Main sections that explain the concepts simply
3. Practical examples that demonstrate each concept
4. A summary of the key points

Write the lesson in %s, using headings, lists and code blocks where they help.`

const quizTemplate = `You are an assessment designer who writes effective multiple-choice quizzes.

Write questions that test understanding of the topic. For every question:
1. State the question clearly
2. Give exactly 4 options labelled A, B, C and D
3. Mix recall, application and analysis questions
4. Mark exactly one option as correct by ending it with [CORRECT]

Use this layout:

# [Quiz Title]

## Question 1
[Question text]
A. [Option A]
B. [Option B]
C. [Option C] [CORRECT]
D. [Option D]

## Question 2
...

Write 4-6 questions in total.
Write the quiz in %s.`

const exerciseTemplate = "You are an educator who designs programming exercises.\n\n" +
	"Write coding problems that make learners apply the concepts. Every exercise needs:\n\n" +
	"1. A problem description with clear requirements\n" +
	"2. Skeleton code with the subtasks marked as comments\n" +
	"3. A sample solution\n" +
	"4. Test cases\n\n" +
	"Use this layout for each exercise:\n\n" +
	"# [Exercise Title]\n\n" +
	"## Problem Description\n[What the learner has to build]\n\n" +
	"## Skeleton Code\n```python\n# TODO: implement [functionality]\n# Subtask 1: [description]\n# Subtask 2: [description]\n```\n\n" +
	"## Solution\n```python\n# complete implementation\n```\n\n" +
	"## Test Cases\n[Inputs and the expected outputs]\n\n" +
	"Write 2-3 exercises of increasing difficulty.\n" +
	"Write the exercises in %s."

const projectTemplate = "You are an educator who designs hands-on data projects laid out as a Jupyter notebook.\n\n" +
	"Design a project that makes learners combine several skills from the topic. Lay it out as:\n\n" +
	"# [Project Title]\n\n" +
	"## Project Overview\n[What the project is and what it teaches]\n\n" +
	"## Dataset Description\n[The data used: features, size and source]\n\n" +
	"## Project Structure\n[The main sections of the notebook]\n\n" +
	"## Implementation Details\n\n" +
	"### Cell 1: Import Libraries\n```python\nimport pandas as pd\nimport numpy as np\nimport matplotlib.pyplot as plt\n```\n\n" +
	"### Cell 2: Data Loading\n```python\n# load the dataset\n```\n\n" +
	"### Cell 3: Exploratory Data Analysis\n```python\n# explore and plot the data\n```\n\n" +
	"[Further cells for preprocessing, modelling and evaluation]\n\n" +
	"## Project Deliverables\n[What the learner hands in]\n\n" +
	"## Evaluation Criteria\n[How the work is assessed]\n\n" +
	"Write it as a real notebook would read: instructions in markdown cells and runnable code in code cells.\n" +
	"Write the project in %s."

const genericTemplate = `You are an experienced educator. Create educational content that helps learners understand and apply the concepts.

Write it in %s with clear sections, examples and explanations.`
